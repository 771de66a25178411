// Package tmdb provides a client for the TMDB (The Movie Database) v3 API.
//
// The client is a thin, typed wrapper over the catalog endpoints used by
// cinesphere: trending, popular and top rated lists, movie details with
// embedded credits, similar movies, search, genres and genre discovery.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tmdb.NewClient(
//		"your-api-key",
//		logger,
//		tmdb.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	page, err := client.GetPopular(ctx, 1)
//	if err != nil {
//		fmt.Println(tmdb.UserMessage(err))
//		return
//	}
//	for _, movie := range page.Results {
//		fmt.Println(movie.Title, client.ImageURL(movie.PosterPath, tmdb.ImageSizeMedium))
//	}
//
// # Requests
//
// Every network-backed operation performs exactly one HTTP round trip. There
// are no retries and no client-side aggregation of pages. The API key and the
// locale are appended to every request and cannot be overridden by callers.
// Cancellation and deadlines are taken from the context passed to each call.
//
// # Error Handling
//
// Failures are classified into three kinds:
//
//   - AuthenticationError: the API answered 401 (invalid API key)
//   - APIError: any other non-2xx status, carrying the status code
//   - TransportError: the request never completed (DNS, refused, timeout)
//
// Use IsAuthentication, IsTransport and StatusCode to branch on the kind, and
// UserMessage to get guidance suitable for display:
//
//	if tmdb.IsAuthentication(err) {
//		// ask the user to check the API key
//	}
package tmdb
