// Package insight generates short AI commentary about movies with Gemini.
//
// The content is decorative. Client methods never return errors: on any
// failure (authentication, network, rate limiting, timeouts, malformed or
// empty responses) the failure is logged and a fixed fallback is returned, so
// a detail view can always render.
//
//	client, err := insight.NewClient(ctx, apiKey, logger)
//	if err != nil {
//		client = insight.Disabled(logger)
//	}
//	blurb := client.Insight(ctx, movie.Title, movie.Overview)
package insight
