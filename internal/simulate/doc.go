// Package simulate replays randomly generated readings against a fleet
// monitor to compare sequential and concurrent ingestion.
//
// Plan draws every reading up front from a seeded source, so a sequential
// and a concurrent Run with the same Config apply identical per-car
// sequences. The sequential run uses a bare fleet.Registry with no delay;
// the concurrent run starts one producer per car against fleet.Locked and
// sleeps Delay between readings.
package simulate
