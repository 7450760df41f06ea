// Package interceptor carries htmx header bundles across gRPC metadata.
package interceptor

import (
	"context"
	"fmt"

	"github.com/solatis/hxwire/internal/headers"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// contextKey is a typed key for context values to avoid collisions.
type contextKey string

// requestKey is the context key for the decoded request bundle.
const requestKey = contextKey("hx_request")

// UnaryServerInterceptor decodes the htmx request headers carried in
// incoming metadata and stores the bundle in the handler's context.
// Calls without metadata get an empty bundle. A header that fails to decode
// rejects the call with InvalidArgument.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		md, _ := metadata.FromIncomingContext(ctx)

		bundle, err := headers.DecodeRequest(headers.FromMetadata(md))
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}

		ctx = context.WithValue(ctx, requestKey, bundle)
		return handler(ctx, req)
	}
}

// RequestFromContext extracts the bundle stored by UnaryServerInterceptor.
// Returns nil if the interceptor did not run.
func RequestFromContext(ctx context.Context) *headers.RequestBundle {
	if b, ok := ctx.Value(requestKey).(*headers.RequestBundle); ok {
		return b
	}
	return nil
}

// AppendRequest adds the set fields of b to the outgoing metadata of ctx.
func AppendRequest(ctx context.Context, b *headers.RequestBundle) context.Context {
	fields := headers.EncodeRequest(b)
	kv := make([]string, 0, 2*len(fields))
	for _, f := range fields {
		kv = append(kv, f.Name, string(f.Value))
	}
	return metadata.AppendToOutgoingContext(ctx, kv...)
}

// SendResponse sets the fields of b as gRPC response headers. It must be
// called from a handler before the response is sent.
func SendResponse(ctx context.Context, b *headers.ResponseBundle) error {
	if err := grpc.SetHeader(ctx, headers.EncodeResponse(b).Metadata()); err != nil {
		return fmt.Errorf("set htmx response headers: %w", err)
	}
	return nil
}

// ResponseFromHeader decodes the htmx response headers a client received.
func ResponseFromHeader(md metadata.MD) (*headers.ResponseBundle, error) {
	return headers.DecodeResponse(headers.FromMetadata(md))
}
