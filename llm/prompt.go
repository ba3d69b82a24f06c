package llm

import (
	"bytes"
	"text/template"

	"github.com/getsavvyinc/webtoapk/model"
)

const (
	generateStepsPrompt = `
You are a super friendly tech guide for someone who knows nothing about programming.
Write "for dummies" instructions to turn the web project at {{.RepositoryURL}} into an Android app (APK)
using Apache Cordova, targeting **{{.PlatformVersion}}**.
{{- if .OSLabel}}
The user works on {{.OSLabel}}.
{{- end}}

The response MUST be a JSON array that follows the provided schema. Every object in the array is one step.

For every step:
- title: a short, super simple title.
- explanation: say what to do in a direct, friendly and concise way.
- command, details, actions: fill in as needed.

Cover these points in separate steps, in this exact order:
1. Basic tools: install Node.js (LTS) and the latest Java JDK using two 'link' actions
   ("Download Node.js (LTS)" -> https://nodejs.org/, "Download Java JDK" -> https://www.oracle.com/java/technologies/downloads/),
   then install Cordova. The command MUST be exactly ` + "`npm install -g cordova`" + `.
2. Android Studio: one 'link' action to https://developer.android.com/studio. Explain how to install
   {{.PlatformVersion}} under 'SDK Platforms' and 'Android SDK Command-line Tools (latest)' under 'SDK Tools'.
3. Environment configuration. Title "Step 3: Environment Configuration", isOsSpecific true, top level
   command, details and actions empty. Fill osInstructions:
   - macos_linux: a checklist explanation, details as an outline with "--- Header ---" sections on where to find
     the Android SDK path and how to use nano, and actions tagged with a group:
     "shell_check" (echo $SHELL), "zshrc_setup" / "bash_setup" (create and open ~/.zshrc or ~/.bash_profile),
     "common" (the export block for ANDROID_HOME, JAVA_HOME and PATH with YOUR_ANDROID_SDK_PATH as placeholder),
     "zshrc_apply" / "bash_apply" (source the file), "validation" (echo $ANDROID_HOME).
   - windows: a checklist explanation, no actions, and details as a numbered list with lettered sub-items
     ("1. ...\n   a. ...") for setting ANDROID_HOME, JAVA_HOME and Path by hand and validating with echo %ANDROID_HOME%.
4. Create the project: ` + "`cordova create my-web-app com.example.mywebapp MyWebApp`" + `; explain each argument in details.
5. Enter the folder and add the platform: ` + "`cd my-web-app && cordova platform add android`" + `; mention {{.PlatformVersion}} in details.
6. Check requirements: ` + "`cordova requirements`" + `; details is a numbered troubleshooting checklist for Gradle or Android target errors.
7. Move files: empty the 'www' folder and copy the HTML, CSS and JavaScript files of the project into it. No command.
8. Build the APK: ` + "`cordova build android`" + `, run from the project folder.
9. Find the APK: the command is the path platforms/android/app/build/outputs/apk/debug/app-debug.apk.
10. Next steps: customise config.xml (name, author, icon). No command.
11. Optional app icon: the command contains ONLY the SVG code of a square, modern icon (viewBox="0 0 100 100")
    with a #4ade80 to #22d3ee gradient; explain how to reference it from config.xml. No details, no actions.
`

	generateStepsTemplateName = "generateSteps"
)

var generateStepsPromptTemplate = template.Must(template.New(generateStepsTemplateName).Parse(generateStepsPrompt))

// StepsPrompt renders the prompt for a generation request.
func StepsPrompt(req model.GenerationRequest) (string, error) {
	data := struct {
		RepositoryURL   string
		PlatformVersion string
		OSLabel         string
	}{
		RepositoryURL:   req.RepositoryURL,
		PlatformVersion: req.PlatformVersion,
	}
	if req.OS != "" {
		data.OSLabel = req.OS.Label()
	}

	buf := new(bytes.Buffer)
	if err := generateStepsPromptTemplate.Execute(buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
