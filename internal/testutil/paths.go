package testutil

// Fixture paths relative to the repository root.
// These constants should be used instead of hardcoding paths in test files.
const (
	// FixtureApp is an iOS app project with a unit test target, a Swift
	// package dependency, a variant group and a script phase.
	FixtureApp = "testdata/projects/app.pbxproj"

	// FixtureMinimal is a command line tool with one source file.
	FixtureMinimal = "testdata/projects/minimal.pbxproj"
)

// Well-known identifiers in FixtureMinimal.
const (
	MinimalProject     = "1D0000000000000000000000"
	MinimalMainGroup   = "1D0000000000000000000001"
	MinimalFile        = "1D0000000000000000000002"
	MinimalBuildFile   = "1D0000000000000000000003"
	MinimalSources     = "1D0000000000000000000004"
	MinimalTarget      = "1D0000000000000000000005"
	MinimalProjectList = "1D0000000000000000000008"
	MinimalTargetList  = "1D0000000000000000000009"
)

// Well-known identifiers in FixtureApp.
const (
	AppProject       = "0A0000000000000000000001"
	AppMainGroup     = "0A0000000000000000000010"
	AppProducts      = "0A0000000000000000000011"
	AppGroup         = "0A0000000000000000000012"
	AppTestsGroup    = "0A0000000000000000000013"
	AppDelegateFile  = "0A0000000000000000000020"
	ContentViewFile  = "0A0000000000000000000021"
	InfoPlistFile    = "0A0000000000000000000022"
	StoryboardBase   = "0A0000000000000000000023"
	StoryboardGroup  = "0A0000000000000000000024"
	AppProduct       = "0A0000000000000000000025"
	AppTestsProduct  = "0A0000000000000000000026"
	AppTestsFile     = "0A0000000000000000000027"
	AppDelegateBuild = "0A0000000000000000000030"
	ContentViewBuild = "0A0000000000000000000031"
	StoryboardBuild  = "0A0000000000000000000032"
	AppTestsBuild    = "0A0000000000000000000033"
	PackageBuild     = "0A0000000000000000000034"
	AppSources       = "0A0000000000000000000040"
	AppFrameworks    = "0A0000000000000000000041"
	AppResources     = "0A0000000000000000000042"
	AppScript        = "0A0000000000000000000043"
	AppTestsSources  = "0A0000000000000000000044"
	AppTestsFrames   = "0A0000000000000000000045"
	AppTarget        = "0A0000000000000000000050"
	AppTestsTarget   = "0A0000000000000000000051"
	AppProxy         = "0A0000000000000000000060"
	AppTestsDep      = "0A0000000000000000000061"
	ProjectDebug     = "0A0000000000000000000070"
	ProjectRelease   = "0A0000000000000000000071"
	AppDebug         = "0A0000000000000000000072"
	ProjectList      = "0A0000000000000000000080"
	AppList          = "0A0000000000000000000081"
	AppTestsList     = "0A0000000000000000000082"
	PackageRef       = "0A0000000000000000000090"
	PackageProduct   = "0A0000000000000000000091"
)
