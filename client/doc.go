// Package client provides the public surface of the HydraKV client library.
//
// A Client speaks to a HydraKV server over one of two transports, chosen
// once at construction: the JSON/HTTP API or the binary RPC API. Both
// transports produce logically equivalent outcomes for every operation; the
// returned types are operation-specific, never transport-specific.
//
//	cfg := common.ClientConfig{Host: "127.0.0.1", Transport: common.TransportGRPC}
//	c, err := client.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer c.Close()
//
//	if err := c.CreateDB(ctx, "bench"); err != nil {
//		log.Fatal(err)
//	}
//	if err := c.Set(ctx, "bench", "k1", "v1", 0); err != nil {
//		log.Fatal(err)
//	}
//	value, found, err := c.Get(ctx, "bench", "k1")
package client
