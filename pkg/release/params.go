package release

// Params carries the fields written on create and update. The reconciler
// never publishes: drafts stay drafts.
type Params struct {
	TagName         string
	Name            string
	Body            string
	Prerelease      bool
	TargetCommitish string
}
