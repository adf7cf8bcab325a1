package types

// ChangeOp is the kind of row change reported on the notification channel.
type ChangeOp string

const (
	ChangeOpInsert ChangeOp = "INSERT"
	ChangeOpUpdate ChangeOp = "UPDATE"
	ChangeOpDelete ChangeOp = "DELETE"
)

// ChangeEvent is one notification from the plumbing_families change channel.
// Events may arrive in any order relative to the local action that caused
// them, so consumers treat every event as "state may have changed" and
// refetch rather than applying deltas.
type ChangeEvent struct {
	Op ChangeOp `json:"op"`
	ID string   `json:"id"`
}
