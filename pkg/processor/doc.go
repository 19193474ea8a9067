// Package processor turns pending queue items into delivery attempts.
//
// Processor.ProcessOne claims the oldest pending item and runs it through the
// whole lifecycle: load the notification and its user, resolve the user's
// channel preference, send through the channel, then record the outcome on both
// the notification and the queue item. Any fault along the way, including a
// panic, sends the item back to pending.
//
// Drain processes until the queue is empty. Worker runs a bounded pool that
// drains on a poll interval and on demand through Trigger. Janitor schedules the
// retention sweep and the reaping of items abandoned by crashed workers.
//
//	p, _ := processor.New(q, store, store, store, channel.WithTimeout(registry, 10*time.Second))
//	w, _ := processor.NewWorker(p, processor.WithConcurrency(4))
//	j, _ := processor.NewJanitor(q, store)
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(w.Run(ctx))
//	g.Go(j.Run(ctx))
package processor
