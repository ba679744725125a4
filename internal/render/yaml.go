package render

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

func writeYAML(w io.Writer, doc any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// yamlValue emits decimals as plain numeric scalars. yaml.v3 has no notion
// of decimal.Decimal and would otherwise encode its unexported fields.
func yamlValue(v any) any {
	switch x := v.(type) {
	case decimal.Decimal:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: x.String()}
	case time.Time:
		if isDate(x) {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	case []byte:
		return string(x)
	default:
		return v
	}
}

func (o orderedRow) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, col := range o.columns {
		value := &yaml.Node{}
		if err := value.Encode(o.convert(o.values[col])); err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col},
			value,
		)
	}
	return node, nil
}
