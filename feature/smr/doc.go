// Package smr reconciles an SMR build against its MR baseline.
//
// A snapshot is the set of CTS deviceinfo files collected from one build.
// Snapshots are read from a local directory (DirSource) or a storage bucket
// prefix (BucketSource), decoded into a Snapshot, and handed to a Pipeline
// which runs six checks in a fixed order:
//
//  1. Security patch: both dates valid and the SMR patch strictly newer.
//  2. Base_OS Fingerprint: MR build fingerprint equals the SMR base OS.
//  3. GMS version: equal ro.com.google.gmsversion values.
//  4. Mainline version: same mainline train type, module and version.
//  5. Feature DeviceInfo: order-aware feature list comparison.
//  6. Package DeviceInfo: package list joined by name, where added or
//     removed packages and privileged permission changes fail.
//
// The resulting Report carries every outcome plus the final verdict.
//
// # HTTP
//
//	POST /smr/reconcile  {"mr": "...", "smr": "...", "reference": "2026-03-15"}
//	POST /smr/patch      {"mr": "2026-02-01", "smr": "2026-03-01"}
//	GET  /smr/history?limit=20
//
// History endpoints need a database; without one they answer 503.
package smr
