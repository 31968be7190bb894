package rangecoder

// goldenBytes is the 256-byte reference stream used throughout the golden
// vector tests; every decoder behavior in this package is checked against
// decoding this exact sequence.
var goldenBytes = []byte{
	0xad, 0x5d, 0x0d, 0xf3, 0x2d, 0x76, 0x2a, 0x56, 0xa9, 0xd3, 0xf9, 0xbb,
	0x7f, 0x9a, 0x06, 0xc9, 0x5e, 0x68, 0x57, 0x76, 0xe7, 0xe7, 0x0d, 0x58,
	0x45, 0xf0, 0x77, 0x88, 0x2b, 0xe0, 0x47, 0x12, 0xe0, 0x06, 0x3f, 0x63,
	0xc8, 0xd7, 0x65, 0xa1, 0xe0, 0x09, 0x86, 0x08, 0x9a, 0x11, 0x88, 0xd4,
	0x55, 0xbf, 0x62, 0x3f, 0x64, 0x60, 0x48, 0xdc, 0x67, 0x71, 0x15, 0xab,
	0x09, 0x78, 0xe7, 0x8b, 0x50, 0x5c, 0xf0, 0x99, 0xa9, 0xf1, 0xf2, 0x47,
	0x2d, 0x40, 0x37, 0x79, 0xf9, 0x4a, 0x94, 0x29, 0x17, 0xe6, 0xa2, 0x3e,
	0x17, 0x8d, 0xdf, 0x14, 0xf3, 0xc9, 0x85, 0x51, 0xc5, 0x3f, 0x42, 0x54,
	0x42, 0xfd, 0x9d, 0xa8, 0x3e, 0xf8, 0x30, 0x8a, 0x19, 0x01, 0x28, 0xc2,
	0x4e, 0xe0, 0x60, 0xbc, 0x24, 0x9b, 0x91, 0xe0, 0xed, 0xe3, 0x19, 0x4b,
	0xdb, 0xba, 0x01, 0x11, 0x9a, 0xf2, 0x89, 0x01, 0xb1, 0xb5, 0xb2, 0x25,
	0xe7, 0x3d, 0x2e, 0x75, 0x61, 0xbb, 0x92, 0x28, 0x2d, 0xb4, 0xde, 0x3d,
	0x2a, 0x23, 0xec, 0x15, 0x48, 0x73, 0x3a, 0x80, 0xa7, 0x0b, 0xba, 0xe6,
	0xbc, 0x44, 0x21, 0x27, 0x1c, 0x08, 0x09, 0x1d, 0x62, 0xfe, 0x54, 0xa5,
	0x5f, 0x15, 0x4f, 0x65, 0x4c, 0x81, 0x2c, 0x5a, 0xf2, 0x5c, 0x7c, 0x86,
	0x69, 0x5b, 0xc0, 0x1f, 0x51, 0x9e, 0x3b, 0x32, 0x5d, 0xef, 0x92, 0xbb,
	0x16, 0xfd, 0xcb, 0x88, 0x9f, 0x13, 0x4a, 0x65, 0xe8, 0x2d, 0x40, 0x8a,
	0xbd, 0xc7, 0x29, 0x76, 0xb3, 0x4b, 0xcc, 0x9e, 0xa4, 0xaf, 0xc8, 0xb5,
	0x05, 0x1c, 0x21, 0x97, 0x69, 0xe4, 0x8c, 0x89, 0x6e, 0xb5, 0x9c, 0xb0,
	0xbc, 0x00, 0x85, 0x0d, 0x65, 0xed, 0x30, 0x8b, 0xe0, 0xe4, 0x0c, 0x1c,
	0x3b, 0x20, 0xbf, 0x2a, 0x89, 0xec, 0xa9, 0x80, 0xc2, 0x6e, 0xc0, 0x52,
	0x28, 0x8d, 0x7c, 0x1a,
}
