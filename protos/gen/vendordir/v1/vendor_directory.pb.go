// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.10
// 	protoc        (unknown)
// source: vendordir/v1/vendor_directory.proto

package vendordirv1

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

type VendorRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	VendorId      string                 `protobuf:"bytes,1,opt,name=vendor_id,json=vendorId,proto3" json:"vendor_id,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *VendorRequest) Reset() {
	*x = VendorRequest{}
	mi := &file_vendordir_v1_vendor_directory_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *VendorRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*VendorRequest) ProtoMessage() {}

func (x *VendorRequest) ProtoReflect() protoreflect.Message {
	mi := &file_vendordir_v1_vendor_directory_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use VendorRequest.ProtoReflect.Descriptor instead.
func (*VendorRequest) Descriptor() ([]byte, []int) {
	return file_vendordir_v1_vendor_directory_proto_rawDescGZIP(), []int{0}
}

func (x *VendorRequest) GetVendorId() string {
	if x != nil {
		return x.VendorId
	}
	return ""
}

type VendorResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	VendorId      string                 `protobuf:"bytes,1,opt,name=vendor_id,json=vendorId,proto3" json:"vendor_id,omitempty"`
	Name          string                 `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	CityId        string                 `protobuf:"bytes,3,opt,name=city_id,json=cityId,proto3" json:"city_id,omitempty"`
	Status        string                 `protobuf:"bytes,4,opt,name=status,proto3" json:"status,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *VendorResponse) Reset() {
	*x = VendorResponse{}
	mi := &file_vendordir_v1_vendor_directory_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *VendorResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*VendorResponse) ProtoMessage() {}

func (x *VendorResponse) ProtoReflect() protoreflect.Message {
	mi := &file_vendordir_v1_vendor_directory_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use VendorResponse.ProtoReflect.Descriptor instead.
func (*VendorResponse) Descriptor() ([]byte, []int) {
	return file_vendordir_v1_vendor_directory_proto_rawDescGZIP(), []int{1}
}

func (x *VendorResponse) GetVendorId() string {
	if x != nil {
		return x.VendorId
	}
	return ""
}

func (x *VendorResponse) GetName() string {
	if x != nil {
		return x.Name
	}
	return ""
}

func (x *VendorResponse) GetCityId() string {
	if x != nil {
		return x.CityId
	}
	return ""
}

func (x *VendorResponse) GetStatus() string {
	if x != nil {
		return x.Status
	}
	return ""
}

var File_vendordir_v1_vendor_directory_proto protoreflect.FileDescriptor

const file_vendordir_v1_vendor_directory_proto_rawDesc = "" +
	"\n" +
	"#vendordir/v1/vendor_directory.proto\x12\fvendordir.v1\",\n" +
	"\rVendorRequest\x12\x1b\n" +
	"\tvendor_id\x18\x01 \x01(\tR\bvendorId\"r\n" +
	"\x0eVendorResponse\x12\x1b\n" +
	"\tvendor_id\x18\x01 \x01(\tR\bvendorId\x12\x12\n" +
	"\x04name\x18\x02 \x01(\tR\x04name\x12\x17\n" +
	"\acity_id\x18\x03 \x01(\tR\x06cityId\x12\x16\n" +
	"\x06status\x18\x04 \x01(\tR\x06status2`\n" +
	"\x16VendorDirectoryService\x12F\n" +
	"\tGetVendor\x12\x1b.vendordir.v1.VendorRequest\x1a\x1c.vendordir.v1.VendorResponseBBZ@github.com/giftwala/giftwala/protos/gen/vendordir/v1;vendordirv1b\x06proto3"

var (
	file_vendordir_v1_vendor_directory_proto_rawDescOnce sync.Once
	file_vendordir_v1_vendor_directory_proto_rawDescData []byte
)

func file_vendordir_v1_vendor_directory_proto_rawDescGZIP() []byte {
	file_vendordir_v1_vendor_directory_proto_rawDescOnce.Do(func() {
		file_vendordir_v1_vendor_directory_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_vendordir_v1_vendor_directory_proto_rawDesc), len(file_vendordir_v1_vendor_directory_proto_rawDesc)))
	})
	return file_vendordir_v1_vendor_directory_proto_rawDescData
}

var file_vendordir_v1_vendor_directory_proto_msgTypes = make([]protoimpl.MessageInfo, 2)
var file_vendordir_v1_vendor_directory_proto_goTypes = []any{
	(*VendorRequest)(nil),  // 0: vendordir.v1.VendorRequest
	(*VendorResponse)(nil), // 1: vendordir.v1.VendorResponse
}
var file_vendordir_v1_vendor_directory_proto_depIdxs = []int32{
	0, // 0: vendordir.v1.VendorDirectoryService.GetVendor:input_type -> vendordir.v1.VendorRequest
	1, // 1: vendordir.v1.VendorDirectoryService.GetVendor:output_type -> vendordir.v1.VendorResponse
	1, // [1:2] is the sub-list for method output_type
	0, // [0:1] is the sub-list for method input_type
	0, // [0:0] is the sub-list for extension type_name
	0, // [0:0] is the sub-list for extension extendee
	0, // [0:0] is the sub-list for field type_name
}

func init() { file_vendordir_v1_vendor_directory_proto_init() }
func file_vendordir_v1_vendor_directory_proto_init() {
	if File_vendordir_v1_vendor_directory_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_vendordir_v1_vendor_directory_proto_rawDesc), len(file_vendordir_v1_vendor_directory_proto_rawDesc)),
			NumEnums:      0,
			NumMessages:   2,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_vendordir_v1_vendor_directory_proto_goTypes,
		DependencyIndexes: file_vendordir_v1_vendor_directory_proto_depIdxs,
		MessageInfos:      file_vendordir_v1_vendor_directory_proto_msgTypes,
	}.Build()
	File_vendordir_v1_vendor_directory_proto = out.File
	file_vendordir_v1_vendor_directory_proto_goTypes = nil
	file_vendordir_v1_vendor_directory_proto_depIdxs = nil
}
