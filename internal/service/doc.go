// Package service wraps the PulseNews REST resources.
//
// Each service maps its methods one-to-one onto an HTTP verb and path and
// decodes the response into internal/model records. Services hold no state;
// token persistence belongs to the session package.
package service
