// Command wackywebm converts a video into a WebM whose frame size changes over
// time.
//
//	wackywebm run -m bounce+rotate input.mp4
//	wackywebm plan -m keyframes -k frames.txt input.mp4
//	wackywebm modes
//
// Settings come from a TOML config file (see `wackywebm config init`); run
// flags override them for a single invocation.
package main
