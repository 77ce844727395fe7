// Package resilience groups the fault tolerance helpers used around outbound calls.
//
// Provider adapters and classifier backends wrap every upstream request in a
// circuit breaker, and inside the breaker they allow exactly one retry when the
// upstream reports it is warming up (HTTP 503):
//
//	cb := circuitbreaker.New(circuitbreaker.ProviderConfig("newsapi"))
//	articles, err := circuitbreaker.Run(cb, func() ([]entity.Article, error) {
//	    var out []entity.Article
//	    err := retry.WithBackoff(ctx, retry.ProviderConfig(), func() error {
//	        var ferr error
//	        out, ferr = fetch(ctx)
//	        return ferr
//	    })
//	    return out, err
//	})
package resilience
