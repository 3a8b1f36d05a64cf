package textio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"pickup-delivery-planner/internal/domain"
	"pickup-delivery-planner/internal/platform/obs"
	"strconv"
)

// RouteWriter is a RouteSink that prints a route as two lines:
//
//	m id_1 ... id_m      (1-based order ids)
//	n x_1 y_1 ... x_n y_n
type RouteWriter struct {
	w io.Writer
}

func NewRouteWriter(w io.Writer) *RouteWriter {
	return &RouteWriter{w: w}
}

func (rw *RouteWriter) WriteRoute(ctx context.Context, route domain.Route) (err error) {
	defer obs.Time(ctx, "textio.WriteRoute")(&err)

	bw := bufio.NewWriter(rw.w)
	buf := make([]byte, 0, 16*(len(route.OrderIDs)+len(route.Path)+2))

	buf = strconv.AppendInt(buf, int64(len(route.OrderIDs)), 10)
	for _, id := range route.OrderIDs {
		buf = append(buf, ' ')
		buf = strconv.AppendInt(buf, int64(id+1), 10)
	}
	buf = append(buf, '\n')

	buf = strconv.AppendInt(buf, int64(len(route.Path)), 10)
	for _, p := range route.Path {
		buf = append(buf, ' ')
		buf = strconv.AppendInt(buf, int64(p.X), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendInt(buf, int64(p.Y), 10)
	}
	buf = append(buf, '\n')

	if _, err := bw.Write(buf); err != nil {
		return fmt.Errorf("write route: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write route: flush: %w", err)
	}
	return nil
}
