// Package contract publishes the OpenAPI 3 description of the task creation
// payload and validates FormData records against it.
//
// Schema validation covers shape and presence. The word-count predicates and
// time range ordering are checked on top because JSON Schema cannot express
// them.
package contract
