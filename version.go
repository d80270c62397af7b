package ledger

import "fmt"

// Release numbers of the ledger. Suffix is empty on tagged releases.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

// GitCommit is injected at build time with
// -ldflags "-X github.com/kazitrust/ledger.GitCommit=<hash>".
var GitCommit = ""

// Version is reported by the ABCI Info call and `kazid version`.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)
	if GitCommit == "" {
		return v
	}
	return v + " " + GitCommit
}
