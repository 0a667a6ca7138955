package api

// API Client-
//
// Files:
//   config.go       - node defaults, ticker endpoint and currency list
//   types.go        - record types (Account, Block, Delegate, Peer, ...)
//   units.go        - arktoshi <-> ARK conversion
//   decode.go       - envelope decoding and error types
//   base.go         - Client struct, connection config, request dispatch
//   accounts.go     - account, balance, public key and vote lookups
//   blocks.go       - block queries
//   delegates.go    - delegate and voter queries
//   peers.go        - peers, peer version and sync status
//   transactions.go - transaction queries
//   ticker.go       - fiat price ticker
//   send.go         - signed transfers, votes and unvotes
//   async.go        - goroutine adapter for non-blocking callers
//
// Usage:
//   client, err := api.NewClient("https://node1.arknet.cloud/api/")
//   client.UpdateHeader(api.MainnetNethash, "1.0.1", 4001)
//   account, err := client.GetAccount(ctx, "AUexKjGtgsSpVzPLs6jNMM6vJ6znEVTQWK")
//   if account == nil && err == nil {
//       // not found
//   }
