package main

import "flag"

// Command-line flags controlling display, storage, and optional subsystems.
// Values from a -settings file fill in any flag not given explicitly.
var (
	// showWavesFlag starts with the interference field overlay visible.
	showWavesFlag = flag.Bool("show-waves", true, "render the interference intensity field")

	// showCirclesFlag starts with crest/trough emission circles visible.
	showCirclesFlag = flag.Bool("show-circles", false, "render expanding emission circles around each element")

	// speedFlag sets the wave speed in wavelengths per second.
	speedFlag = flag.Float64("speed", defaultSpeed, "wave speed in wavelengths per second (0.1-5)")

	storePathFlag = flag.String("db", defaultStorePath, "SQLite file holding saved configurations")

	// settingsFlag points at an optional INI settings file.
	settingsFlag = flag.String("settings", "", "optional settings file (gcfg/INI format)")

	// workersFlag sets the number of CPU goroutines sampling the field.
	workersFlag = flag.Int("workers", 0, "field sampling goroutines (0 = one per CPU)")

	// useOpenCLFlag samples the field on the GPU when built with -tags opencl.
	useOpenCLFlag = flag.Bool("opencl", false, "sample the field with OpenCL (requires -tags opencl)")

	// debugFlag enables the FPS and sampling overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and field sampling overlay")

	// enableAudioFlag plays a tone whose loudness follows the field at the cursor.
	enableAudioFlag = flag.Bool("enable-audio", false, "play a probe tone following the field intensity under the cursor")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file while the window is open")

	memProfileFlag = flag.String("memprofile", "", "write a heap profile to this file when the window closes")

	// listFlag prints the saved configurations and exits.
	listFlag = flag.Bool("list", false, "print saved configurations and exit")

	exportJSONFlag = flag.String("export-json", "", "write all saved configurations as a JSON array to this file and exit")

	importJSONFlag = flag.String("import-json", "", "replace saved configurations with the JSON array in this file and exit")

	// loadFlag opens the named saved configuration at startup.
	loadFlag = flag.String("load", "", "name of a saved configuration to open at startup")
)
