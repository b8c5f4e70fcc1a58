// Package acl is the anti-corruption layer between downstream HTTP APIs and
// the domain.
//
// Adapters embed [BaseAdapter], declare unexported DTOs for the wire shape,
// fetch them with [GetJSON] and translate them into domain values with
// [TranslateSlice]. Failures are
// mapped once, at this boundary:
//
//   - [MapHTTPError] turns transport failures and error statuses into
//     domain.UnavailableError, NotFoundError, ValidationError and friends.
//   - [DecodeError] turns an undecodable body into domain.ParseError, or
//     domain.FormatError when the JSON is well formed but the wrong shape.
//
// [FeedClient] is the only adapter today. It reads a JSONPlaceholder style
// /posts endpoint and keeps nothing but each post's title:
//
//	feed := acl.NewFeedClient(acl.FeedClientConfig{
//	    Client:   client,
//	    Category: "Server",
//	})
//	quotes, err := feed.FetchQuotes(ctx, 5)
//
// External DTOs never leave this package.
package acl
