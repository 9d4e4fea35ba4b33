package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldConsumerID = "consumer_id"
	FieldBatchID    = "batch_id"
	FieldBatchSize  = "batch_size"
	FieldTopic      = "topic"
	FieldJobID      = "job_id"
	FieldJobStatus  = "job_status"
)
