package dom

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// jsonNode is the JSON view of a Node: elements carry tag, attrs and
// children, text nodes carry only text.
type jsonNode struct {
	Tag      string            `json:"tag,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []*jsonNode       `json:"children,omitempty"`
	Text     *string           `json:"text,omitempty"`
}

func toJSONNode(n *Node) *jsonNode {
	if n.Type == TextType {
		s := n.Text
		return &jsonNode{Text: &s}
	}
	res := &jsonNode{Tag: n.Tag}
	if len(n.Attrs) != 0 {
		res.Attrs = make(map[string]string, len(n.Attrs))
		for _, a := range n.Attrs {
			res.Attrs[a.Name] = a.Value
		}
	}
	for _, c := range n.Children {
		res.Children = append(res.Children, toJSONNode(c))
	}
	return res
}

func fromJSONNode(j *jsonNode, path string) (*Node, error) {
	if j == nil {
		return nil, fmt.Errorf("%s: null node", path)
	}
	if j.Text != nil {
		if j.Tag != "" || len(j.Attrs) != 0 || len(j.Children) != 0 {
			return nil, fmt.Errorf("%s: text node with element fields", path)
		}
		return TextNode(*j.Text), nil
	}
	if j.Tag == "" {
		return nil, fmt.Errorf("%s: element without tag", path)
	}
	res := Element(j.Tag)
	names := make([]string, 0, len(j.Attrs))
	for name := range j.Attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		res.Attrs = append(res.Attrs, Attr{Name: name, Value: j.Attrs[name]})
	}
	for i, jc := range j.Children {
		c, err := fromJSONNode(jc, fmt.Sprintf("%s/%d", path, i))
		if err != nil {
			return nil, err
		}
		res.Append(c)
	}
	return res, nil
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSONNode(n))
}

func (n *Node) UnmarshalJSON(d []byte) error {
	j := &jsonNode{}
	if err := json.Unmarshal(d, j); err != nil {
		return err
	}
	res, err := fromJSONNode(j, "")
	if err != nil {
		return err
	}
	res.CloneTo(n)
	return nil
}

// ToJSON renders n in its JSON view, indented when indent is non-empty.
func ToJSON(n *Node, indent string) ([]byte, error) {
	if indent == "" {
		return json.Marshal(toJSONNode(n))
	}
	return json.MarshalIndent(toJSONNode(n), "", indent)
}

func FromJSON(d []byte) (*Node, error) {
	n := &Node{}
	if err := n.UnmarshalJSON(d); err != nil {
		return nil, fmt.Errorf("invalid node json: %w", err)
	}
	return n, nil
}

// Pointer returns the JSON pointer addressing n within the JSON view of
// its root, or "" for the root itself.
func (n *Node) Pointer() string {
	var parts []string
	for c := n; c.Parent != nil; c = c.Parent {
		parts = append(parts, strconv.Itoa(c.ParentIndex), "children")
	}
	if len(parts) == 0 {
		return ""
	}
	slices.Reverse(parts)
	return "/" + strings.Join(parts, "/")
}
