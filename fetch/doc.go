// Package fetch retrieves raw bytes from HTTP endpoints or local files.
//
// It is the single transport collaborator for the pipeline: the static zip
// and every realtime feed go through Client.Get, and all failures come back
// as *FetchError so callers can report the URL and status uniformly. No
// retries; one user-triggered cycle performs one fetch per resource.
package fetch
