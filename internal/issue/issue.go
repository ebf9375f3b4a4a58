// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a catalog entry.
type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	InvalidImageConfigId
	UnsupportedAlgorithmId
	DownloadFailedId
	ChecksumMismatchId
	UnsupportedArchiveId
	ReleaseFileNotFoundId
	JmodsNotFoundId
	LinkFailedId
	JavaNotFoundId
)

const (
	jlinkManual HttpLink = "https://docs.oracle.com/en/java/javase/21/docs/specs/man/jlink.html"
	jep493      HttpLink = "https://openjdk.org/jeps/493"
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id
	mdMsg    MarkdownMsg
	extLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Markdown returns the page source including the "See also" links.
func (i *Issue) Markdown() string {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.extLinks {
			md.WriteString("\n- <")
			md.WriteString(string(link))
			md.WriteString(">")
		}
	}
	return md.String()
}

// Render renders the page with the given glamour style ("dark", "light",
// "notty" or a path to a JSON style).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the configuration

jlinker reads its settings from a CUE file. The file could not be read or
does not satisfy the schema.

## Lookup order
1. The file passed with ` + "`--config`" + `
2. ` + "`jlinker.cue`" + ` in the current directory
3. ` + "`jlinker/config.cue`" + ` in your user configuration directory

## Things you can try
- Print a complete example and compare it with your file:
~~~
$ jlinker config init
~~~
- Check which values jlinker ends up with:
~~~
$ jlinker config show
~~~`,
	}

	invalidImageConfigIssue = &Issue{
		id: InvalidImageConfigId,
		mdMsg: `
# The image configuration is incomplete

An image needs a name, a main module and a main class before jlink can run.
Target JDK descriptors need a name, a checksum and either a URL or a
Maven-style group.

## Example
~~~cue
application: {
	name:        "app"
	main_module: "com.example.app"
	main_class:  "com.example.app.Main"
}
~~~`,
		extLinks: []HttpLink{jlinkManual},
	}

	unsupportedAlgorithmIssue = &Issue{
		id: UnsupportedAlgorithmId,
		mdMsg: `
# Unsupported checksum algorithm

Downloads are verified with one of ` + "`SHA-256`" + `, ` + "`SHA-384`" + ` or ` + "`SHA-512`" + `.
Vendors publish SHA-256 checksums next to every JDK archive, so that is the
default when no algorithm is configured.`,
	}

	downloadFailedIssue = &Issue{
		id: DownloadFailedId,
		mdMsg: `
# The JDK download failed

The server answered with a status other than 200, or the connection broke
before the archive was complete.

## Things you can try
- Open the URL in a browser to check it still exists
- If you use a Maven-style group, check the repository base URL
- Download the archive manually and point ` + "`jdk_archive`" + ` at it`,
	}

	checksumMismatchIssue = &Issue{
		id: ChecksumMismatchId,
		mdMsg: `
# Checksum mismatch

The downloaded archive does not have the checksum you configured. The file
was kept so you can inspect it, but it will not be extracted.

## Things you can try
- Compare the configured checksum with the one published by the vendor
- Make sure the configured algorithm matches the published checksum
- Delete the archive and download again`,
	}

	unsupportedArchiveIssue = &Issue{
		id: UnsupportedArchiveId,
		mdMsg: `
# Unsupported archive format

Only ` + "`.zip`" + ` and ` + "`.tar.gz`" + ` JDK archives can be extracted. Pick the matching
download from the vendor page, or extract the archive yourself and set
` + "`java_home`" + ` for that target.`,
	}

	releaseFileNotFoundIssue = &Issue{
		id: ReleaseFileNotFoundId,
		mdMsg: `
# No JDK found in the extracted archive

Every JDK ships a ` + "`release`" + ` file with a ` + "`JAVA_VERSION`" + ` entry in its home
directory. None was found anywhere below the extraction directory.

## Things you can try
- Check that the URL points at a JDK and not a JRE or a source bundle
- Inspect the archive:
~~~
$ jlinker jdk inspect path/to/jdk.tar.gz
~~~`,
	}

	jmodsNotFoundIssue = &Issue{
		id: JmodsNotFoundId,
		mdMsg: `
# Cross-linking is not available with this JDK

Some JDK builds link from the runtime image instead of shipping ` + "`jmods`" + `.
jlink can only produce an image for another platform from a JDK that ships
the ` + "`jmods`" + ` directory.

## Things you can try
- Use a vendor build that still includes ` + "`jmods`" + `
- Build the image on the target platform itself`,
		extLinks: []HttpLink{jep493},
	}

	linkFailedIssue = &Issue{
		id: LinkFailedId,
		mdMsg: `
# jlink failed

jlink exited with a non-zero status. Its error output is shown above.

## Common causes
- A module named in ` + "`add_modules`" + ` is not on the module path
- The cross-target JDK is a different feature release than the JDK running jlink
- An unknown plugin was passed to ` + "`disable_plugins`" + `

Run with ` + "`--verbose`" + ` to log the full jlink command line.`,
		extLinks: []HttpLink{jlinkManual},
	}

	javaNotFoundIssue = &Issue{
		id: JavaNotFoundId,
		mdMsg: `
# No java launcher in the image

The image directory does not contain ` + "`bin/java`" + `. Build it first:
~~~
$ jlinker image build
~~~`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		invalidImageConfigIssue.Id():   invalidImageConfigIssue,
		unsupportedAlgorithmIssue.Id(): unsupportedAlgorithmIssue,
		downloadFailedIssue.Id():       downloadFailedIssue,
		checksumMismatchIssue.Id():     checksumMismatchIssue,
		unsupportedArchiveIssue.Id():   unsupportedArchiveIssue,
		releaseFileNotFoundIssue.Id():  releaseFileNotFoundIssue,
		jmodsNotFoundIssue.Id():        jmodsNotFoundIssue,
		linkFailedIssue.Id():           linkFailedIssue,
		javaNotFoundIssue.Id():         javaNotFoundIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
