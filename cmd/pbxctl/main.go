// Command pbxctl inspects and edits Xcode project files.
package main

func main() {
	execute()
}
