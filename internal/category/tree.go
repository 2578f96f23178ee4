package category

import (
	"log"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/resellerhub/storefront-backend/internal/catpath"
)

// BuildTree turns the flat category rows into a nested tree. Ancestor paths
// with no row of their own get a virtual node, direct product counts are
// aggregated bottom-up into TotalCount, and siblings at every level are
// sorted by display name ignoring case and accents (ties keep input order).
func BuildTree(rows []Row) []*Node {
	nodes := make(map[string]*Node, len(rows))
	order := make([]string, 0, len(rows))

	for _, r := range rows {
		path := catpath.Join(catpath.Segments(r.Path)...)
		if path == "" {
			// a row with no usable path still gets a spot as an orphan root
			path = r.Name
		}
		if _, ok := nodes[path]; ok {
			// path uniqueness is a feed invariant; keep the first row
			continue
		}
		nodes[path] = &Node{
			ID:          r.ID,
			Name:        r.Name,
			Path:        path,
			DirectCount: r.DirectCount,
		}
		order = append(order, path)
	}

	// synthesize every missing ancestor up to the root
	for _, path := range append([]string(nil), order...) {
		cur := path
		for {
			parent := catpath.Parent(cur)
			if parent == "" {
				break
			}
			if _, ok := nodes[parent]; !ok {
				nodes[parent] = &Node{
					Virtual: true,
					Name:    catpath.Last(parent),
					Path:    parent,
				}
				order = append(order, parent)
			}
			cur = parent
		}
	}

	// attach children; a node becomes a child of its parent at most once
	attached := make(map[string]bool, len(nodes))
	for _, path := range order {
		parent := catpath.Parent(path)
		if parent == "" {
			continue
		}
		pn, ok := nodes[parent]
		if !ok {
			// cannot happen after synthesis; promote to root and keep going
			log.Printf("category: node %q has unresolved parent %q, promoting to root", path, parent)
			continue
		}
		if !attached[path] {
			pn.Children = append(pn.Children, nodes[path])
			attached[path] = true
		}
	}

	roots := make([]*Node, 0)
	for _, path := range order {
		if !attached[path] {
			roots = append(roots, nodes[path])
		}
	}

	for _, root := range roots {
		computeTotals(root)
	}

	cl := collate.New(language.Und, collate.Loose)
	sortNodes(roots, cl)

	return roots
}

func computeTotals(n *Node) int {
	total := n.DirectCount
	for _, c := range n.Children {
		total += computeTotals(c)
	}
	n.TotalCount = total
	return total
}

func sortNodes(nodes []*Node, cl *collate.Collator) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return cl.CompareString(nodes[i].Name, nodes[j].Name) < 0
	})
	for _, n := range nodes {
		sortNodes(n.Children, cl)
	}
}
