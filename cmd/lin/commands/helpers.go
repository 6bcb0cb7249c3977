// Package commands implements the lin CLI commands.
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/linode-client/pkg/linclient"
	"github.com/fivetwenty-io/linode-client/pkg/linode"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	// JSON formatting.
	defaultJSONIndent = "  "
)

// Common static errors used throughout the commands package.
var (
	ErrTokenRequired    = errors.New("no token configured (run 'lin configure' or set LINODE_TOKEN)")
	ErrIDRequired       = errors.New("resource id is required")
	ErrDomainIDRequired = errors.New("domain id is required (--domain)")
	ErrLabelRequired    = errors.New("label is required")
	ErrRegionRequired   = errors.New("region is required (--region)")
	ErrTypeRequired     = errors.New("type is required (--type)")

	ErrUnsupportedOutputFormat = errors.New("unsupported output format")
)

// stderrLogger implements linode.Logger for --verbose mode.
type stderrLogger struct{}

func (stderrLogger) log(level, msg string, fields map[string]interface{}) {
	parts := make([]string, 0, len(fields))
	for key, value := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", key, value))
	}

	fmt.Fprintf(os.Stderr, "[%s] %s %s\n", level, msg, strings.Join(parts, " "))
}

func (l stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("debug", msg, fields) }
func (l stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("info", msg, fields) }
func (l stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("warn", msg, fields) }
func (l stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("error", msg, fields) }

// CreateClient builds a client from the resolved configuration. Catalog
// commands work without a token; everything else needs one.
func CreateClient(requireToken bool) (*linclient.Client, error) {
	token := viper.GetString("token")
	if token == "" && requireToken {
		return nil, ErrTokenRequired
	}

	config := &linode.Config{
		BaseURL: viper.GetString("api"),
		Token:   token,
		Cache:   &linode.CacheConfig{Type: linode.CacheTypeMemory},
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = stderrLogger{}
	}

	return linclient.New(config)
}

// entityValues resolves the named fields of an entity for table rendering.
func entityValues(ctx context.Context, entity *linode.Entity, fields []string) ([]string, error) {
	row := make([]string, 0, len(fields)+1)
	row = append(row, entity.ID())

	for _, field := range fields {
		value, err := entity.Get(ctx, field)
		if err != nil {
			return nil, err
		}

		row = append(row, formatValue(value))
	}

	return row, nil
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return NotAvailable
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, formatValue(item))
		}

		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// entityDocuments converts entities into plain maps for json/yaml output.
func entityDocuments(ctx context.Context, entities []*linode.Entity, fields []string) ([]map[string]any, error) {
	docs := make([]map[string]any, 0, len(entities))

	for _, entity := range entities {
		doc := map[string]any{"id": entity.ID()}

		for _, field := range fields {
			value, err := entity.Get(ctx, field)
			if err != nil {
				return nil, err
			}

			doc[field] = value
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// renderEntityList renders a collection in the configured output format.
// The table view shows an ID column followed by the named fields.
func renderEntityList(ctx context.Context, entities []*linode.Entity, fields []string, noun string) error {
	output := viper.GetString("output")
	if output == OutputFormatJSON || output == OutputFormatYAML {
		docs, err := entityDocuments(ctx, entities, fields)
		if err != nil {
			return err
		}

		return renderDocuments(output, docs)
	}

	if len(entities) == 0 {
		fmt.Printf("No %s found\n", noun)

		return nil
	}

	header := make([]any, 0, len(fields)+1)
	header = append(header, "ID")

	for _, field := range fields {
		header = append(header, strings.ToUpper(field))
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header(header...)

	for _, entity := range entities {
		row, err := entityValues(ctx, entity, fields)
		if err != nil {
			return err
		}

		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}

		_ = table.Append(cells...)
	}

	_ = table.Render()

	return nil
}

// renderEntity renders a single entity as a property table, or as a
// json/yaml document when requested.
func renderEntity(ctx context.Context, entity *linode.Entity, fields []string) error {
	output := viper.GetString("output")
	if output == OutputFormatJSON || output == OutputFormatYAML {
		docs, err := entityDocuments(ctx, []*linode.Entity{entity}, fields)
		if err != nil {
			return err
		}

		return renderDocuments(output, docs[0])
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")
	_ = table.Append("id", entity.ID())

	for _, field := range fields {
		value, err := entity.Get(ctx, field)
		if err != nil {
			return err
		}

		_ = table.Append(field, formatValue(value))
	}

	_ = table.Render()

	return nil
}

// filterPair is one field=value equality constraint taken from a flag.
type filterPair struct {
	field string
	value string
}

// buildFilter turns the non-empty flag values into an equality filter,
// combining multiple constraints with and.
func buildFilter(typeTag string, pairs []filterPair) (linode.Filter, error) {
	desc, ok := linode.DefaultRegistry().Lookup(typeTag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", linode.ErrUnknownField, typeTag)
	}

	filters := make([]linode.Filter, 0, len(pairs))

	for _, pair := range pairs {
		if pair.value == "" {
			continue
		}

		field, err := desc.Filter(pair.field)
		if err != nil {
			return nil, err
		}

		filter, err := field.Eq(pair.value)
		if err != nil {
			return nil, err
		}

		filters = append(filters, filter)
	}

	if len(filters) == 0 {
		return nil, nil
	}

	return linode.And(filters...), nil
}

// listOptionsFromFlags assembles ListOptions from the shared list flags.
func listOptionsFromFlags(filter linode.Filter, orderBy string, descending bool, pageSize int) *linclient.ListOptions {
	opts := &linclient.ListOptions{Filter: filter, PageSize: pageSize}
	if orderBy != "" {
		opts.Order = &linode.Order{Field: orderBy, Descending: descending}
	}

	return opts
}

// renderDocuments writes docs as JSON or YAML to stdout.
func renderDocuments(format string, docs any) error {
	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", defaultJSONIndent)

		return encoder.Encode(docs)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		return encoder.Encode(docs)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedOutputFormat, format)
	}
}
