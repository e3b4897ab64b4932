package deque

import (
	"math/rand"
	"testing"
)

func RandomInsert(queue Queue[int], entries int) {
	front := rand.Intn(entries)
	for i := 0; i < front; i++ {
		queue.PushFront(-1 - i)
	}
	for i := 0; i < entries-front; i++ {
		queue.PushBack(-1 - i)
	}
}

func RandomRemove(queue Queue[int]) {
	for queue.Len() > 0 && *queue.Front() < 0 {
		queue.PopFront()
	}
	for queue.Len() > 0 && *queue.Back() < 0 {
		queue.PopBack()
	}
}

func ModelTestAsForwardQueue(queue Queue[int], entries int, repeats int, t *testing.T) {
	for repeat := 0; repeat < repeats; repeat++ {
		RandomInsert(queue, 1+rand.Intn(3*BucketSize))
		initLen := queue.Len()
		for i := 0; i < entries; i++ {
			queue.PushBack(i)
		}
		if queue.Len()-initLen != entries {
			t.Errorf("On iteration %v, bad length for queue, want %v, got %v", repeat, entries, queue.Len()-initLen)
		}
		RandomRemove(queue)
		for i := 0; i < entries; i++ {
			if value := queue.PopFront(); value != i {
				t.Errorf("On iteration %v/%v, got incorrect value %v", repeat, i, value)
			}
		}
	}
}

func ModelTestAsForwardStack(queue Queue[int], entries int, repeats int, t *testing.T) {
	for repeat := 0; repeat < repeats; repeat++ {
		RandomInsert(queue, 1+rand.Intn(3*BucketSize))
		initLen := queue.Len()
		for i := 0; i < entries; i++ {
			queue.PushBack(i)
		}
		if queue.Len()-initLen != entries {
			t.Errorf("On iteration %v, bad length for queue, want %v, got %v", repeat, entries, queue.Len()-initLen)
		}
		RandomRemove(queue)
		for i := entries - 1; i >= 0; i-- {
			if value := queue.PopBack(); value != i {
				t.Errorf("On iteration %v/%v, got incorrect value %v", repeat, i, value)
			}
		}
	}
}

func ModelTestAsReverseQueue(queue Queue[int], entries int, repeats int, t *testing.T) {
	for repeat := 0; repeat < repeats; repeat++ {
		RandomInsert(queue, 1+rand.Intn(3*BucketSize))
		initLen := queue.Len()
		for i := 0; i < entries; i++ {
			queue.PushFront(i)
		}
		if queue.Len()-initLen != entries {
			t.Errorf("On iteration %v, bad length for queue, want %v, got %v", repeat, entries, queue.Len()-initLen)
		}
		RandomRemove(queue)
		for i := 0; i < entries; i++ {
			if value := queue.PopBack(); value != i {
				t.Errorf("On iteration %v/%v, got incorrect value %v", repeat, i, value)
			}
		}
	}
}

func ModelTestAsReverseStack(queue Queue[int], entries int, repeats int, t *testing.T) {
	for repeat := 0; repeat < repeats; repeat++ {
		RandomInsert(queue, 1+rand.Intn(3*BucketSize))
		initLen := queue.Len()
		for i := 0; i < entries; i++ {
			queue.PushFront(i)
		}
		if queue.Len()-initLen != entries {
			t.Errorf("On iteration %v, bad length for queue, want %v, got %v", repeat, entries, queue.Len()-initLen)
		}
		RandomRemove(queue)
		for i := entries - 1; i >= 0; i-- {
			if value := queue.PopFront(); value != i {
				t.Errorf("On iteration %v/%v, got incorrect value %v", repeat, i, value)
			}
		}
	}
}

func TestDequeAsForwardQueue(t *testing.T) {
	ModelTestAsForwardQueue(New[int](), 20, 20, t)
}

func TestDequeAsReverseQueue(t *testing.T) {
	ModelTestAsReverseQueue(New[int](), 20, 20, t)
}

func TestDequeAsForwardStack(t *testing.T) {
	ModelTestAsForwardStack(New[int](), 20, 20, t)
}

func TestDequeAsReverseStack(t *testing.T) {
	ModelTestAsReverseStack(New[int](), 20, 20, t)
}

func TestRandomly(t *testing.T) {
	queue := New[int]()
	for i := 0; i < 100; i++ {
		switch rand.Intn(4) {
		case 0:
			ModelTestAsForwardQueue(queue, 20, 1, t)
		case 1:
			ModelTestAsReverseQueue(queue, 20, 1, t)
		case 2:
			ModelTestAsForwardStack(queue, 20, 1, t)
		case 3:
			ModelTestAsReverseStack(queue, 20, 1, t)
		}
		if err := queue.Validate(); err != nil {
			t.Fatalf("after round %d: %v", i, err)
		}
	}
}
