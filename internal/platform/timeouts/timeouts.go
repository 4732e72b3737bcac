// Package timeouts defines shared timeout constants.
package timeouts

import "time"

// PlatformRequest caps a single call to the chat platform (send, delete, move).
const PlatformRequest = 10 * time.Second

// BoardImageFetch caps downloading the rendered board image.
const BoardImageFetch = 15 * time.Second

// StorageWrite caps one state snapshot write.
const StorageWrite = 5 * time.Second

// Shutdown limits how long servers wait for in-flight work during graceful
// shutdown.
const Shutdown = 5 * time.Second
