// Package pipeline provides composable, pull-based data pipeline operators.
//
// Pipelines are lazy: no work happens until values are pulled via Collect,
// Drain, or ForEach. Each stage pulls from the previous stage on demand, so a
// stage that stops pulling (Take, TakeWhile) stops all upstream work,
// including any I/O performed by the source iterator.
//
// All operators run on the caller's goroutine and preserve source order.
//
// # Operators
//
//   - FlatMap: expand each value into an iterator and flatten
//   - Tap: side-effect without altering the value (logging, metrics, counting)
//   - Take: at most n values
//   - TakeWhile: the longest prefix satisfying a predicate
//
// # Usage
//
//	src := pipeline.FromSlice([]int{1, 2, 3, 4, 5})
//	firstThree := pipeline.Take(src, 3)
//	small := pipeline.TakeWhile(firstThree, func(n int) bool { return n < 3 })
//	results, _ := pipeline.Collect(ctx, small) // [1 2]
package pipeline
