package catalog

import (
	"context"
	"encoding/json"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "catalog.v1.Catalog"

// CodecName is the content subtype the catalog messages travel under.
const CodecName = "json"

const (
	methodListPopular  = "/" + ServiceName + "/ListPopular"
	methodListTopRated = "/" + ServiceName + "/ListTopRated"
	methodSearch       = "/" + ServiceName + "/Search"
	methodGetByID      = "/" + ServiceName + "/GetByID"
)

// Request messages.
type (
	ListRequest struct {
		Page int `json:"page"`
	}
	SearchRequest struct {
		Query string `json:"query"`
		Page  int    `json:"page"`
	}
	GetRequest struct {
		ID string `json:"id"`
	}
)

// jsonCodec encodes gRPC messages as JSON.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return CodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// ServiceDesc describes the catalog service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*Catalog)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListPopular",
			Handler: unaryHandler(methodListPopular, func(ctx context.Context, c Catalog, in *ListRequest) (any, error) {
				p, err := c.ListPopular(ctx, in.Page)
				return &p, err
			}),
		},
		{
			MethodName: "ListTopRated",
			Handler: unaryHandler(methodListTopRated, func(ctx context.Context, c Catalog, in *ListRequest) (any, error) {
				p, err := c.ListTopRated(ctx, in.Page)
				return &p, err
			}),
		},
		{
			MethodName: "Search",
			Handler: unaryHandler(methodSearch, func(ctx context.Context, c Catalog, in *SearchRequest) (any, error) {
				p, err := c.Search(ctx, in.Query, in.Page)
				return &p, err
			}),
		},
		{
			MethodName: "GetByID",
			Handler: unaryHandler(methodGetByID, func(ctx context.Context, c Catalog, in *GetRequest) (any, error) {
				m, err := c.GetByID(ctx, in.ID)
				return &m, err
			}),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterServer exposes impl on s.
func RegisterServer(s grpc.ServiceRegistrar, impl Catalog) {
	s.RegisterService(&ServiceDesc, impl)
}

func unaryHandler[Req any](method string, call func(context.Context, Catalog, *Req) (any, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		handler := func(ctx context.Context, req any) (any, error) {
			out, err := call(ctx, srv.(Catalog), req.(*Req))
			if err != nil {
				return nil, toStatus(err)
			}
			return out, nil
		}
		if interceptor == nil {
			return handler(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		return interceptor(ctx, in, info, handler)
	}
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

func fromStatus(err error) error {
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

// GRPCClient reads the catalog from a catalogd instance.
type GRPCClient struct {
	conn *grpc.ClientConn
}

// DialGRPC creates a plaintext client for addr. Extra options are appended
// to the defaults.
func DialGRPC(addr string, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &GRPCClient{conn: conn}, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) ListPopular(ctx context.Context, page int) (Page, error) {
	var out Page
	err := c.conn.Invoke(ctx, methodListPopular, &ListRequest{Page: page}, &out)
	return out, fromStatus(err)
}

func (c *GRPCClient) ListTopRated(ctx context.Context, page int) (Page, error) {
	var out Page
	err := c.conn.Invoke(ctx, methodListTopRated, &ListRequest{Page: page}, &out)
	return out, fromStatus(err)
}

func (c *GRPCClient) Search(ctx context.Context, query string, page int) (Page, error) {
	var out Page
	err := c.conn.Invoke(ctx, methodSearch, &SearchRequest{Query: query, Page: page}, &out)
	return out, fromStatus(err)
}

func (c *GRPCClient) GetByID(ctx context.Context, id string) (Movie, error) {
	var out Movie
	if err := c.conn.Invoke(ctx, methodGetByID, &GetRequest{ID: id}, &out); err != nil {
		return Movie{}, fromStatus(err)
	}
	return out, nil
}
