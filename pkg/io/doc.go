// Package io reads roadmap inputs from files and writes persisted rows.
//
// # Overview
//
// The engine itself never performs I/O. This package is the file boundary
// used by the CLI:
//
//   - payloads: raw roadmap documents for the normalizer ([ImportPayload])
//   - records: persisted node and edge rows ([ImportRecords], [ExportRecords])
//   - completion lists: IDs the learner has finished ([ImportCompletion],
//     [ExportCompletion]); text lists are one ID per line with # comments
//
// # Formats
//
// The format is picked from the file extension ([FormatFromPath]): .yaml and
// .yml are YAML, .txt and .md are text, everything else is JSON. YAML
// payloads are converted to JSON before normalization, so the normalizer's
// probes see the same shape either way.
//
// # Records
//
//	{
//	  "subject": "Go",
//	  "nodes": [
//	    {"node_id": "basics", "title": "Basics", "depth_level": 1},
//	    {"node_id": "generics", "title": "Generics", "depth_level": 2}
//	  ],
//	  "edges": [
//	    {"source_node_id": "basics", "target_node_id": "generics"}
//	  ],
//	  "completed": ["basics"]
//	}
//
// Missing files are reported with the FILE_NOT_FOUND error code.
package io
