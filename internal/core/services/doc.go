// Package services implements the driving port interfaces.
// Services contain the core pipeline logic (keyword extraction,
// chunking, ranking, deduplication, classification, distillation)
// and orchestrate calls to driven ports (adapters).
package services
