package models

// Dump holds the content of every table
type Dump struct {
	Users         []User         `json:"users"`
	Playlists     []Playlist     `json:"playlists"`
	Songs         []Song         `json:"songs"`
	PlaylistSongs []PlaylistSong `json:"playlist_songs"`
	Images        []Image        `json:"images"`
	Assets        []Asset        `json:"assets"`
}

func DumpAll() (d Dump, err error) {
	if d.Users, err = UserList(); err != nil {
		return
	}
	if d.Playlists, err = PlaylistList(); err != nil {
		return
	}
	if d.Songs, err = SongList(); err != nil {
		return
	}
	if d.PlaylistSongs, err = PlaylistSongList(); err != nil {
		return
	}
	if d.Images, err = ImageList(); err != nil {
		return
	}
	d.Assets, err = AssetList()
	return
}
