// Package containers provides the record type and HTTP client for the
// container API.
//
// # Overview
//
// The API serves two read-only endpoints:
//
//   - GET /container: the full record list, in canonical order
//   - GET /container/{rowidunh}: a single record
//
// Both return JSON objects of the shape
//
//	{
//	  "rowidunh": 1042,
//	  "agency": "Agencia Maritima",
//	  "transhipment": "",
//	  "carrier": "MSC",
//	  "booking": "BK-88120",
//	  "load": "Valparaiso",
//	  "deliver": "Rotterdam",
//	  "discharge": "Rotterdam",
//	  "date_time": "2024-03-15T23:59:00"
//	}
//
// Every key is required. Empty strings are valid values (an empty
// transhipment means the container travels direct); a missing key is not.
//
// # Client Usage
//
//	client, err := containers.NewClient(cfg.APIURL,
//		containers.WithTimeout(cfg.RequestTimeout),
//		containers.WithLocation(cfg.Location()),
//		containers.WithLogger(logger),
//	)
//	records, err := client.FetchAll(ctx)
//
// # Timestamps
//
// date_time values carrying an offset are converted into the client's
// location. Values without an offset are read as wall-clock time in that
// location. Day comparisons done by the view package rely on this
// normalization.
//
// # Error Handling
//
// Failures are reported as one of two types:
//
//   - *NetworkError: the request could not be made, or the API answered
//     with a status >= 400
//   - *DecodeError: the body is not JSON, a key is missing, a timestamp is
//     invalid, or two records share an id
//
// errors.Is(err, ErrNetwork) and errors.Is(err, ErrDecode) classify them.
// Callers treat either as "no data" for the load attempt.
//
// # Caching
//
// WithCache installs a PayloadCache consulted before each request. Keys are
// name-based UUIDs of the request URL. Only payloads that decode are
// stored. A context wrapped with WithFresh skips the lookup, so a user
// refresh reaches the API and rewrites the entry. Cache failures are logged
// and never fail a fetch.
package containers
