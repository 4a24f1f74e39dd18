package demo

import "uthread/fiber"

// mailboxSentinel is the message body producers never send and
// consumers use to recognize the end-of-stream marker the driver posts
// once per consumer after every producer has finished. These sentinel
// values are simply dequeued and dropped, never reclaimed from the
// queue's backing slice — a harmless, deliberate leak.
const mailboxSentinel = -1

// Mailbox runs a producers/consumers scenario: producers post messages
// into a slice-backed queue guarded by a mutex and metered by a
// semaphore counting the posted messages not yet claimed (its limit is
// the total of messages plus sentinels, so no release is ever clamped);
// consumers loop acquire/dequeue/release.
// After every producer finishes, the driver posts one sentinel per
// consumer so each consumer fiber can exit cleanly instead of blocking
// forever on an empty queue.
func Mailbox(producers, consumers, messagesPerProducer int, opts ...fiber.SchedulerOption) Result {
	sched := fiber.NewScheduler(opts...)
	mu := fiber.NewMutex(sched, false)
	sem := fiber.NewSemaphore(sched, 0, producers*messagesPerProducer+consumers)

	var queue []int
	consumed := 0
	sentinelsConsumed := 0

	producerGroup := fiber.NewGroup(sched)
	producerGroup.Add(producers)
	consumerGroup := fiber.NewGroup(sched)
	consumerGroup.Add(consumers)

	for p := 0; p < producers; p++ {
		sched.Create(func(_ any) {
			for m := 0; m < messagesPerProducer; m++ {
				mu.Acquire()
				queue = append(queue, m)
				mu.Release()
				sem.Release(1)
			}
			producerGroup.Done()
		}, nil, fiber.Named("mailbox-producer"))
	}

	for c := 0; c < consumers; c++ {
		sched.Create(func(_ any) {
			for {
				sem.Acquire(1)
				mu.Acquire()
				msg := queue[0]
				queue = queue[1:]
				mu.Release()
				if msg == mailboxSentinel {
					sentinelsConsumed++
					break
				}
				consumed++
			}
			consumerGroup.Done()
		}, nil, fiber.Named("mailbox-consumer"))
	}

	sched.Create(func(_ any) {
		producerGroup.Wait()
		for c := 0; c < consumers; c++ {
			mu.Acquire()
			queue = append(queue, mailboxSentinel)
			mu.Release()
			sem.Release(1)
		}
		consumerGroup.Wait()
	}, nil, fiber.Named("mailbox-driver"))

	sched.Run()

	return Result{
		Scenario: "mailbox",
		Summary:  "every posted message and every sentinel was consumed exactly once",
		Details: map[string]int{
			"consumed":          consumed,
			"sentinelsConsumed": sentinelsConsumed,
			"queueLenAtExit":    len(queue),
		},
	}
}
