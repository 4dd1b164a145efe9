package cli

import (
	"fmt"
	"io"
	"strings"
)

// writeMetrics prints every counter the app's registry holds as
// "name{label=value} count".
func writeMetrics(w io.Writer, a *app) error {
	families, err := a.metrics.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}

	return nil
}
