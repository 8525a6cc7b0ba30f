// Package linker moves a workflow asset into its repository and leaves a
// symbolic link behind.
//
// Linking one asset is an ordered list of steps:
//
//	preflight  build file exists and has the manifest line
//	copy       asset copied into the repository root, overwriting
//	remove     original deleted
//	symlink    link created at the original location
//	manifest   filename appended to the manifest line
//
// Each result is checked before the next step runs. Nothing is rolled back:
// when a step fails the earlier ones stay done and Link returns a StepError
// naming the step. A failure after "remove" leaves the asset only in the
// repository until it is restored by hand.
package linker
