// Code generated by protoc-gen-go-grpc. DO NOT EDIT.
// versions:
// - protoc-gen-go-grpc v1.6.0
// - protoc             (unknown)
// source: vendordir/v1/vendor_directory.proto

package vendordirv1

import (
	context "context"
	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

// This is a compile-time assertion to ensure that this generated file
// is compatible with the grpc package it is being compiled against.
// Requires gRPC-Go v1.64.0 or later.
const _ = grpc.SupportPackageIsVersion9

const (
	VendorDirectoryService_GetVendor_FullMethodName = "/vendordir.v1.VendorDirectoryService/GetVendor"
)

// VendorDirectoryServiceClient is the client API for VendorDirectoryService service.
//
// For semantics around ctx use and closing/ending streaming RPCs, please refer to https://pkg.go.dev/google.golang.org/grpc/?tab=doc#ClientConn.NewStream.
//
// VendorDirectoryService exposes vendor records owned by catalog-service to
// sibling services that need to validate a vendor before acting on it.
type VendorDirectoryServiceClient interface {
	GetVendor(ctx context.Context, in *VendorRequest, opts ...grpc.CallOption) (*VendorResponse, error)
}

type vendorDirectoryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewVendorDirectoryServiceClient(cc grpc.ClientConnInterface) VendorDirectoryServiceClient {
	return &vendorDirectoryServiceClient{cc}
}

func (c *vendorDirectoryServiceClient) GetVendor(ctx context.Context, in *VendorRequest, opts ...grpc.CallOption) (*VendorResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(VendorResponse)
	err := c.cc.Invoke(ctx, VendorDirectoryService_GetVendor_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// VendorDirectoryServiceServer is the server API for VendorDirectoryService service.
// All implementations must embed UnimplementedVendorDirectoryServiceServer
// for forward compatibility.
//
// VendorDirectoryService exposes vendor records owned by catalog-service to
// sibling services that need to validate a vendor before acting on it.
type VendorDirectoryServiceServer interface {
	GetVendor(context.Context, *VendorRequest) (*VendorResponse, error)
	mustEmbedUnimplementedVendorDirectoryServiceServer()
}

// UnimplementedVendorDirectoryServiceServer must be embedded to have
// forward compatible implementations.
//
// NOTE: this should be embedded by value instead of pointer to avoid a nil
// pointer dereference when methods are called.
type UnimplementedVendorDirectoryServiceServer struct{}

func (UnimplementedVendorDirectoryServiceServer) GetVendor(context.Context, *VendorRequest) (*VendorResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetVendor not implemented")
}
func (UnimplementedVendorDirectoryServiceServer) mustEmbedUnimplementedVendorDirectoryServiceServer() {
}
func (UnimplementedVendorDirectoryServiceServer) testEmbeddedByValue() {}

// UnsafeVendorDirectoryServiceServer may be embedded to opt out of forward compatibility for this service.
// Use of this interface is not recommended, as added methods to VendorDirectoryServiceServer will
// result in compilation errors.
type UnsafeVendorDirectoryServiceServer interface {
	mustEmbedUnimplementedVendorDirectoryServiceServer()
}

func RegisterVendorDirectoryServiceServer(s grpc.ServiceRegistrar, srv VendorDirectoryServiceServer) {
	// If the following call panics, it indicates UnimplementedVendorDirectoryServiceServer was
	// embedded by pointer and is nil.  This will cause panics if an
	// unimplemented method is ever invoked, so we test this at initialization
	// time to prevent it from happening at runtime later due to I/O.
	if t, ok := srv.(interface{ testEmbeddedByValue() }); ok {
		t.testEmbeddedByValue()
	}
	s.RegisterService(&VendorDirectoryService_ServiceDesc, srv)
}

func _VendorDirectoryService_GetVendor_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(VendorRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VendorDirectoryServiceServer).GetVendor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: VendorDirectoryService_GetVendor_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VendorDirectoryServiceServer).GetVendor(ctx, req.(*VendorRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// VendorDirectoryService_ServiceDesc is the grpc.ServiceDesc for VendorDirectoryService service.
// It's only intended for direct use with grpc.RegisterService,
// and not to be introspected or modified (even as a copy)
var VendorDirectoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "vendordir.v1.VendorDirectoryService",
	HandlerType: (*VendorDirectoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetVendor",
			Handler:    _VendorDirectoryService_GetVendor_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vendordir/v1/vendor_directory.proto",
}
