package category

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Row is a flat category record as delivered by the catalog feed: the id and
// name assigned by the source, the backslash-delimited path encoding the
// ancestor chain, and the number of products tagged directly to the category.
type Row struct {
	ID          int
	Name        string
	Path        string
	DirectCount int
}

// Node is one node of the in-memory category tree built per request.
// A virtual node is synthesized when the feed references an ancestor path
// that has no category row of its own; it carries no real id.
type Node struct {
	ID          int
	Virtual     bool
	Name        string
	Path        string
	DirectCount int
	TotalCount  int
	Children    []*Node
}

// virtualIDPrefix marks synthesized node ids in the wire format so clients
// cannot mistake them for persisted category ids.
const virtualIDPrefix = "virtual-"

type nodeJSON struct {
	ID                 json.RawMessage `json:"id"`
	Name               string          `json:"name"`
	Path               string          `json:"path"`
	ProductCount       int             `json:"productCount"`
	DirectProductCount int             `json:"directProductCount"`
	Children           []*Node         `json:"children"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	var id any = n.ID
	if n.Virtual {
		id = virtualIDPrefix + n.Path
	}
	rawID, err := json.Marshal(id)
	if err != nil {
		return nil, err
	}
	children := n.Children
	if children == nil {
		children = []*Node{}
	}
	return json.Marshal(nodeJSON{
		ID:                 rawID,
		Name:               n.Name,
		Path:               n.Path,
		ProductCount:       n.TotalCount,
		DirectProductCount: n.DirectCount,
		Children:           children,
	})
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var intID int
	if err := json.Unmarshal(raw.ID, &intID); err == nil {
		n.ID = intID
		n.Virtual = false
	} else {
		var s string
		if err := json.Unmarshal(raw.ID, &s); err != nil {
			return fmt.Errorf("category node id is neither int nor string: %s", raw.ID)
		}
		if !strings.HasPrefix(s, virtualIDPrefix) {
			return fmt.Errorf("unexpected category node id %q", s)
		}
		n.Virtual = true
		n.ID = 0
	}
	n.Name = raw.Name
	n.Path = raw.Path
	n.TotalCount = raw.ProductCount
	n.DirectCount = raw.DirectProductCount
	n.Children = raw.Children
	return nil
}
