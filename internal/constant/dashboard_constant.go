package constant

const (
	MessageNoData = "No data available."
	MessagePurged = "Data has been purged. Upload new data to view the dashboard."

	// BlankTableLabel is stored when the table name input is empty.
	BlankTableLabel = " "

	TablePageSize = 10

	ContentKindChart       = "chart"
	ContentKindPlaceholder = "placeholder"
)

// Activity event types published on the internal bus and forwarded to NATS.
const (
	EventDatasetUploaded = "DATASET_UPLOADED"
	EventDatasetPurged   = "DATASET_PURGED"
	EventDatasetEdited   = "DATASET_EDITED"
	EventUploadRejected  = "UPLOAD_REJECTED"
)

// LiveMessageDatasetChanged is the websocket message type pushed after a state change.
const LiveMessageDatasetChanged = "dataset_changed"
