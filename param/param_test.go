package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "none", input: "cordova build android", want: nil},
		{name: "angle brackets", input: "cordova create <folder> <package-id>", want: []string{"<folder>", "<package-id>"}},
		{
			name:  "sdk path",
			input: "export ANDROID_HOME=YOUR_ANDROID_SDK_PATH\nexport PATH=$PATH:YOUR_ANDROID_SDK_PATH/platform-tools",
			want:  []string{"YOUR_ANDROID_SDK_PATH"},
		},
		{name: "lowercase is not a placeholder", input: "echo your_path YOURS", want: nil},
		{name: "mixed", input: "cp -r <dir> YOUR_WWW_DIR", want: []string{"<dir>", "YOUR_WWW_DIR"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Extract(tc.input))
		})
	}
}
