// Package async provides small generic helpers for running computations
// concurrently and collecting their results.
//
// Async starts a function in its own goroutine and returns a Future that the
// caller can Await. Map applies a function to every element of a slice with
// a bounded number of workers, preserving input order in the results - the
// batch file-validation path uses it to cap how many content samples are
// held in memory at once.
//
//	reports, err := async.Map(ctx, files, 4, func(ctx context.Context, f File) (Report, error) {
//	    return validate(ctx, f), nil
//	})
package async
