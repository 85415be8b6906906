// Package hook generates the pacman trigger hooks that keep a wrapper in
// place across package upgrades and clean it up on removal.
//
// Two hooks exist per wrapped binary:
//
//	{dir}/{binary}-{program}-install.hook  Install/Upgrade -> run the installer script
//	{dir}/{binary}-{program}-remove.hook   Remove          -> delete every wrapper artifact
//
// Hook paths are computed by Layout.Path only, so the hook written at wrap
// time and the path deleted by the removal hook are always byte-identical.
package hook
