package logging

import "context"

type fieldsKey struct{}

// WithContext installs fields (and, via ports.WithCorrelationID composed by
// the caller beforehand, a correlation id) for the dynamic extent of block
// (spec 4.A, "with-context(ctx, block)"). Every Handle.log call made from
// inside block — directly or through further-derived contexts — picks up
// these fields automatically.
func WithContext(ctx context.Context, fields map[string]interface{}, block func(context.Context)) {
	block(context.WithValue(ctx, fieldsKey{}, mergeFieldMaps(contextFields(ctx), fields)))
}

func contextFields(ctx context.Context) map[string]interface{} {
	if ctx == nil {
		return nil
	}
	if m, ok := ctx.Value(fieldsKey{}).(map[string]interface{}); ok {
		return m
	}
	return nil
}

func mergeFieldMaps(base, additions map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(additions))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range additions {
		out[k] = v
	}
	return out
}
