package domain

// BulkOp is a batch operation applied to many entities at once.
type BulkOp string

const (
	BulkPause    BulkOp = "pause"
	BulkActivate BulkOp = "activate"
	BulkArchive  BulkOp = "archive"
	BulkDelete   BulkOp = "delete"
)

// Valid reports whether op is a supported batch operation.
func (op BulkOp) Valid() bool {
	switch op {
	case BulkPause, BulkActivate, BulkArchive, BulkDelete:
		return true
	}
	return false
}

// BulkItem is the outcome of one item in a batch. Err is empty on success.
type BulkItem struct {
	ID  string `json:"id"`
	OK  bool   `json:"ok"`
	Err string `json:"error,omitempty"`
}

// BulkResult aggregates a batch. Items preserves input order and
// Succeeded+Failed always equals the number of input ids; no item is
// silently dropped.
type BulkResult struct {
	Succeeded int        `json:"succeeded"`
	Failed    int        `json:"failed"`
	Items     []BulkItem `json:"items"`
}
