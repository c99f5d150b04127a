package queue

import "testing"

func TestOpListRoleLifecycle(t *testing.T) {
	var pool NodePool[int]
	var l opList[int]

	if !l.empty() {
		t.Fatal("new list not empty")
	}

	for i := 0; i < 3; i++ {
		n := pool.get()
		n.val = i
		l.pushBack(opPush, n)
	}
	if l.role != opPush {
		t.Fatalf("role = %v, want opPush", l.role)
	}

	for i := 0; i < 3; i++ {
		n := l.popFront()
		if n.val != i {
			t.Fatalf("popFront val = %d, want %d", n.val, i)
		}
		*n = opNode[int]{}
		pool.put(n)
	}
	if !l.empty() {
		t.Fatal("list not empty after draining")
	}
	if l.role != opNone {
		t.Fatalf("role = %v, want opNone after draining", l.role)
	}

	// Draining resets the role: the other side may park now.
	n := pool.get()
	l.pushBack(opPop, n)
	if l.role != opPop {
		t.Fatalf("role = %v, want opPop", l.role)
	}
}

func TestOpListMixedRolesPanic(t *testing.T) {
	var pool NodePool[int]
	var l opList[int]

	l.pushBack(opPush, pool.get())

	defer func() {
		if recover() == nil {
			t.Fatal("mixing roles did not panic")
		}
	}()
	l.pushBack(opPop, pool.get())
}

func TestOpListTake(t *testing.T) {
	var pool NodePool[int]
	var src, dst opList[int]

	for i := 0; i < 2; i++ {
		n := pool.get()
		n.val = i
		src.pushBack(opPush, n)
	}

	dst.take(&src)

	if !src.empty() || src.role != opNone {
		t.Fatal("source not cleared by take")
	}
	if dst.role != opPush {
		t.Fatalf("role = %v, want opPush", dst.role)
	}
	for i := 0; i < 2; i++ {
		if n := dst.popFront(); n.val != i {
			t.Fatalf("popFront val = %d, want %d", n.val, i)
		}
	}
}
