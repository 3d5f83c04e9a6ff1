// Package memory provides the three-tier memory system for evo agents.
//
// The system composes three stores with different lifetimes:
//   - WorkingMemory: transient key/value context for the current task,
//     cleared on demand, never persisted
//   - EpisodicMemory: content-addressed experience records, retrievable by
//     similarity through a pluggable Store backend
//   - SemanticMemory: long-lived facts, last-write-wins, never expired
//
// Architecture:
//   - Store: similarity backend (chromem-go or qdrant for indexed search,
//     fallback for a dependency-free linear scan)
//   - Embedder: text-to-vector conversion (feature hashing for local use,
//     ONNX all-MiniLM-L6-v2 behind the onnx build tag)
//   - System: the facade collaborators share by reference
//
// A System is never a process-wide singleton; every call to NewSystem
// returns fully independent state, so tests and multiple agents can run
// side by side.
//
// Integration:
//   - The action planner reads and writes working memory and grounds plans
//     in past experiences via Episodic
//   - The feedback loop records processed observations as experiences and
//     promotes learnings into semantic facts
//
// System.Cleanup tears down only the episodic backend. Working and semantic
// memory survive cleanup deliberately; they are reclaimed with the System
// itself.
package memory
