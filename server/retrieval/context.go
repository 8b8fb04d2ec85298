package retrieval

import (
	"strings"

	"github.com/hrygo/officehours/plugin/ai/vector"
)

// UnknownOffice stands in for a document without an office name.
const UnknownOffice = "Unknown Office"

// BuildContext renders retrieved documents as the rule summary handed to the
// decision engine and the narrator. Each document becomes
//
//	[office | country | timezone]
//	<text>
//
// and blocks are separated by a blank line, in retrieval order.
func BuildContext(docs []vector.RetrievedDocument) string {
	blocks := make([]string, 0, len(docs))
	for _, doc := range docs {
		office := doc.Metadata.OfficeName
		if office == "" {
			office = UnknownOffice
		}
		blocks = append(blocks, "["+office+" | "+doc.Metadata.Country+" | "+doc.Metadata.Timezone+"]\n"+doc.Text)
	}
	return strings.Join(blocks, "\n\n")
}
