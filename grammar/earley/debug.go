package earley

import (
	"bytes"

	"github.com/npillmayer/schuko/tracing"
)

func (p *Parser) dumpState(stateno int) {
	if tracer().GetTraceLevel() < tracing.LevelDebug {
		return
	}
	tracer().Debugf("--- State %04d ------------------------------------", stateno)
	for n, it := range p.states[stateno].items {
		tracer().Debugf("[%2d] %s", n+1, p.itemString(it))
	}
}

func (p *Parser) itemSetString(items []item) string {
	var b bytes.Buffer
	b.WriteString("{")
	first := true
	for _, it := range items {
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(p.itemString(it))
	}
	b.WriteString(" }")
	return b.String()
}
