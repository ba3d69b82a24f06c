package model

// PlatformVersions are the Android releases offered as build targets.
var PlatformVersions = []string{
	"Android 14 (Upside Down Cake)",
	"Android 13 (Tiramisu)",
	"Android 12 (Snow Cone)",
	"Android 11 (Red Velvet Cake)",
	"Android 10 (Q)",
}

var DefaultPlatformVersion = PlatformVersions[0]
