package queue_test

import (
	"fmt"
	"sync"

	queue "github.com/npcba/async.queue"
)

func Example() {
	var loop queue.Loop
	q := queue.New[string](&loop, 2)

	q.AsyncPush("hello", func(err error) {})
	q.AsyncPush("world", func(err error) {})
	q.AsyncPop(func(err error, s string) { fmt.Println(s) })
	q.AsyncPop(func(err error, s string) { fmt.Println(s) })

	loop.Run()
	// Output:
	// hello
	// world
}

// A queue with limit 0 buffers nothing: producers and consumers meet in
// a rendezvous. The blocking wrappers turn goroutines into the
// producing and consuming sides while runners drive the loop.
func Example_rendezvous() {
	var loop queue.Loop
	q := queue.New[int](&loop, 0)

	work := queue.MakeWork(&loop)

	var runners sync.WaitGroup
	for i := 0; i < 4; i++ {
		runners.Add(1)
		go func() {
			defer runners.Done()
			loop.Run()
		}()
	}

	var actors sync.WaitGroup
	actors.Add(1)
	go func() {
		defer actors.Done()
		for i := 1; i <= 3; i++ {
			q.Push(i * 10)
		}
	}()
	actors.Add(1)
	go func() {
		defer actors.Done()
		for i := 0; i < 3; i++ {
			v, _ := q.Pop()
			fmt.Println(v)
		}
	}()
	actors.Wait()

	work.Reset()
	runners.Wait()
	// Output:
	// 10
	// 20
	// 30
}

func ExampleQueue_Close() {
	var loop queue.Loop
	q := queue.New[int](&loop, 1)

	q.AsyncPush(1, func(err error) {})
	q.Close()

	q.AsyncPush(2, func(err error) { fmt.Println("push:", err) })
	q.AsyncPop(func(err error, v int) { fmt.Println("pop:", v, err) })
	q.AsyncPop(func(err error, v int) { fmt.Println("pop:", err) })

	loop.Run()
	// Output:
	// push: queue: queue closed
	// pop: 1 <nil>
	// pop: queue: queue closed
}

func ExampleQueue_Cancel() {
	var loop queue.Loop
	q := queue.New[int](&loop, 1)

	q.AsyncPop(func(err error, v int) { fmt.Println("pop:", err) })
	fmt.Println("canceled:", q.Cancel())

	loop.Run()
	// Output:
	// canceled: 1
	// pop: queue: operation canceled
}

// A pop completion may provide its own fallback value for the cancel
// and close paths.
func ExampleValueFactory() {
	var loop queue.Loop
	q := queue.New[int](&loop, 1)

	q.AsyncPopOr(queue.ValueOf(-1), func(err error, v int) {
		fmt.Println(v, err)
	})
	q.Close()

	loop.Run()
	// Output:
	// -1 queue: queue closed
}
