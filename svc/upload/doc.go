// Package upload is the service layer tying the validation pipeline to its
// collaborators: object storage, the uploads metadata table, and the
// quarantine store.
//
// The flow per upload is: validate via filescan, then either persist the
// file and record its metadata, or - when the report advises quarantine -
// hand the file to the quarantine store for operator review. Rejections
// without quarantine advice are returned to the client directly.
//
// The HTTP surface is a chi router:
//
//	POST   /uploads                 multipart upload, field "file"
//	POST   /uploads/batch           multipart upload, repeated field "files"
//	GET    /quarantine              list held files
//	POST   /quarantine/{id}/release release a held file
//	DELETE /quarantine              clear the quarantine store
//	GET    /health                  liveness plus database connectivity
package upload
