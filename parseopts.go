package calcore

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds the settings for one parse.
type parsectx struct {
	// maxDepth is the maximum parenthesis nesting, or 0 for no limit.
	maxDepth int
}

type depthopt int

// MaxDepth limits how deeply parentheses may nest. Parsing input that nests
// more deeply fails with a *DepthError. A limit of zero or less removes the
// limit, which is the default.
func MaxDepth(n int) ParseOption {
	if n < 0 {
		n = 0
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxDepth = int(o)
	return p
}

func newParsectx(opts []ParseOption) parsectx {
	var p parsectx
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	return p
}
