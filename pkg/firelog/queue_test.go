package firelog

import (
	"testing"
	"time"
)

func TestQueueFIFO(t *testing.T) {
	q := newQueue(nil)

	for _, name := range []string{"a", "b", "c"} {
		if !q.offer(DeliveryJob{EventName: name}) {
			t.Fatalf("offer %q rejected", name)
		}
	}

	for _, want := range []string{"a", "b", "c"} {
		job, ok := q.pop()
		if !ok {
			t.Fatal("expected a job")
		}
		if job.EventName != want {
			t.Errorf("pop = %q, want %q", job.EventName, want)
		}
	}
}

func TestQueueDropsAtCapacity(t *testing.T) {
	q := newQueue(func() int { return 2 })

	if !q.offer(DeliveryJob{EventName: "a"}) || !q.offer(DeliveryJob{EventName: "b"}) {
		t.Fatal("expected first two offers to be accepted")
	}
	if q.offer(DeliveryJob{EventName: "c"}) {
		t.Error("expected offer at capacity to be rejected")
	}
	if q.len() != 2 {
		t.Errorf("queue length = %d, want 2", q.len())
	}
}

func TestQueueRuntimeResize(t *testing.T) {
	size := 1
	q := newQueue(func() int { return size })

	if !q.offer(DeliveryJob{}) {
		t.Fatal("expected offer to be accepted")
	}
	if q.offer(DeliveryJob{}) {
		t.Fatal("expected offer at capacity to be rejected")
	}

	// The size function is re-evaluated on every offer.
	size = 3
	if !q.offer(DeliveryJob{}) {
		t.Error("expected offer to be accepted after resize")
	}
}

func TestQueueNonPositiveCapacityFallsBack(t *testing.T) {
	q := newQueue(func() int { return 0 })
	if !q.offer(DeliveryJob{}) {
		t.Error("expected fallback to the default capacity")
	}
}

func TestQueueCloseDrains(t *testing.T) {
	q := newQueue(nil)
	q.offer(DeliveryJob{EventName: "pending"})
	q.close()

	if q.offer(DeliveryJob{EventName: "late"}) {
		t.Error("expected offer after close to be rejected")
	}

	job, ok := q.pop()
	if !ok || job.EventName != "pending" {
		t.Errorf("expected pending job after close, got (%v, %v)", job, ok)
	}

	if _, ok := q.pop(); ok {
		t.Error("expected drained closed queue to report no more jobs")
	}
}

func TestQueuePopBlocksUntilOffer(t *testing.T) {
	q := newQueue(nil)
	got := make(chan DeliveryJob, 1)

	go func() {
		job, ok := q.pop()
		if ok {
			got <- job
		}
	}()

	// Give the consumer a moment to block.
	time.Sleep(10 * time.Millisecond)
	q.offer(DeliveryJob{EventName: "wakeup"})

	select {
	case job := <-got:
		if job.EventName != "wakeup" {
			t.Errorf("pop = %q, want %q", job.EventName, "wakeup")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pop did not wake up after offer")
	}
}
