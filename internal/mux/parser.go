package mux

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/suiterun/internal/params"
)

// variantBlock is the HCL-level schema of one variant block.
type variantBlock struct {
	Label  string    `hcl:"label,label"`
	Test   string    `hcl:"test,optional"`
	Params cty.Value `hcl:"params,optional"`
}

// fileRoot decodes the top-level blocks of a variants file.
type fileRoot struct {
	Variants []*variantBlock `hcl:"variant,block"`
	Remain   hcl.Body        `hcl:",remain"`
}

// variant is one translated variant: its filter target and its finished set.
type variant struct {
	label string
	test  string
	set   *params.Set
}

// Parser holds the variants declared by one multiplex file, in declaration
// order, and produces parameter sets from them.
type Parser struct {
	path     string
	variants []variant
}

// New parses the multiplex file at path and translates every variant block
// into a parameter set.
func New(path string) (*Parser, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse multiplex file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode multiplex file %s: %w", path, diags)
	}

	p := &Parser{path: path}
	for _, block := range root.Variants {
		set, err := translateVariant(block)
		if err != nil {
			return nil, fmt.Errorf("%s: variant %q: %w", path, block.Label, err)
		}
		p.variants = append(p.variants, variant{
			label: block.Label,
			test:  block.Test,
			set:   set,
		})
	}
	return p, nil
}

// translateVariant converts one decoded block into an immutable parameter
// set. The shortname entry always comes first; the remaining params follow in
// lexical key order so the produced sets are deterministic.
func translateVariant(block *variantBlock) (*params.Set, error) {
	attrs := make(map[string]string)
	if !block.Params.IsNull() {
		if !block.Params.Type().IsObjectType() && !block.Params.Type().IsMapType() {
			return nil, fmt.Errorf("params must be an object, got %s", block.Params.Type().FriendlyName())
		}
		for key, val := range block.Params.AsValueMap() {
			str, err := convert.Convert(val, cty.String)
			if err != nil {
				return nil, fmt.Errorf("param %q: %w", key, err)
			}
			attrs[key] = str.AsString()
		}
	}

	shortname := attrs[params.ShortnameKey]
	if shortname == "" {
		switch {
		case block.Test != "":
			shortname = block.Test + "." + block.Label
		default:
			shortname = block.Label
		}
	}

	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		if key == params.ShortnameKey {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]params.Pair, 0, len(keys)+1)
	pairs = append(pairs, params.Pair{Key: params.ShortnameKey, Value: shortname})
	for _, key := range keys {
		pairs = append(pairs, params.Pair{Key: key, Value: attrs[key]})
	}
	return params.FromPairs(pairs), nil
}

// Path returns the multiplex file this parser was built from.
func (p *Parser) Path() string {
	return p.path
}

// Dicts returns every variant's parameter set, in declaration order.
func (p *Parser) Dicts() []*params.Set {
	sets := make([]*params.Set, 0, len(p.variants))
	for _, v := range p.variants {
		sets = append(sets, v.set)
	}
	return sets
}

// DictsFor returns the parameter sets of variants whose test attribute
// matches the identifier or the identifier's resolvable prefix, in
// declaration order.
func (p *Parser) DictsFor(identifier string) []*params.Set {
	prefix := params.Prefix(identifier)
	var sets []*params.Set
	for _, v := range p.variants {
		if v.test == identifier || v.test == prefix {
			sets = append(sets, v.set)
		}
	}
	return sets
}
