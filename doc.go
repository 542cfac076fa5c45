// Package carmine is a Redis client core built around Sentinel-based
// master resolution and a RESP3 request writer.
//
// The root package is the high-level glue: env-driven configuration and
// a Connect helper that resolves the current master for a named service
// through pkg/sentinel, then returns a ready go-redis client pointed at
// it.
//
//	cfg, err := carmine.LoadConfig[carmine.Config]()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := carmine.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// The subsystems live in their own packages:
//
//   - pkg/sentinel — master resolution against a Sentinel quorum, with
//     retries, statistics, and observer callbacks.
//   - pkg/resp — the RESP3 request encoder.
//   - pkg/freeze — the serialization codec behind frozen arguments.
package carmine
