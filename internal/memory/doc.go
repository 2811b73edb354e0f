// Package memory sets the Go runtime soft memory limit for containerized
// deployments.
//
// GOMAXPROCS follows cgroup CPU limits automatically, GOMEMLIMIT does not.
// Every download runs an ffmpeg child outside the Go heap, so only part of
// the container limit is handed to the runtime.
//
// # Environment Variables
//
//   - GOMEMLIMIT: Standard Go variable. When set it is left untouched.
//   - MEMORY_LIMIT: Container memory limit in bytes, typically from the
//     Kubernetes Downward API.
//   - MEMORY_RATIO: Share of MEMORY_LIMIT for the Go heap, in (0, 1].
//     Default 0.5.
//
// Example Kubernetes container environment:
//
//	env:
//	  - name: MEMORY_LIMIT
//	    valueFrom:
//	      resourceFieldRef:
//	        resource: limits.memory
package memory
