//go:build protogen

package grpcserver

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	vendordirv1 "github.com/giftwala/giftwala/protos/gen/vendordir/v1"
	"github.com/giftwala/giftwala/services/catalog-service/internal/storage"
)

type server struct {
	vendordirv1.UnimplementedVendorDirectoryServiceServer
	repo *storage.Repository
}

func Register(grpcServer *grpc.Server, repo *storage.Repository) {
	vendordirv1.RegisterVendorDirectoryServiceServer(grpcServer, &server{repo: repo})
}

func (s *server) GetVendor(ctx context.Context, req *vendordirv1.VendorRequest) (*vendordirv1.VendorResponse, error) {
	if req.GetVendorId() == "" {
		return nil, status.Error(codes.InvalidArgument, "vendor_id is required")
	}
	v, err := s.repo.GetVendor(ctx, req.GetVendorId())
	if errors.Is(err, storage.ErrNotFound) {
		return nil, status.Error(codes.NotFound, "vendor not found")
	}
	if err != nil {
		return nil, status.Error(codes.Internal, "vendor lookup failed")
	}
	return &vendordirv1.VendorResponse{
		VendorId: v.ID,
		Name:     v.Name,
		CityId:   v.CityID,
		Status:   v.Status,
	}, nil
}
